package outbox_producer

import (
	"github.com/IBM/sarama"
)

// NewProducer builds the sync producer used by the outbox relay. The
// relay must know a message reached the broker before marking the row
// sent, so it waits for full acknowledgement.
func NewProducer(brokerList []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(brokerList, cfg)
}
