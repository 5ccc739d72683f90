package producer

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

// Producer pushes catalog change events to the broker. Storefront
// writes do not depend on broker acknowledgement, hence the async
// producer: a lost event only delays peer convergence until TTL expiry.
type Producer struct {
	log logger.Logger

	topic  string
	events chan models.Event

	producer sarama.AsyncProducer
}

func NewProducer(
	ctx context.Context,
	log logger.Logger,
	topic string,
	events chan models.Event,
	brokerList []string,
) (*Producer, error) {
	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForLocal
	producerConfig.Producer.Compression = sarama.CompressionNone
	producerConfig.Producer.Return.Successes = true
	producerConfig.Producer.Return.Errors = true

	asyncProducer, err := sarama.NewAsyncProducer(brokerList, producerConfig)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case sendErr, ok := <-asyncProducer.Errors():
				if !ok {
					return
				}

				log.Warn("failed to send message", logger.Err(sendErr))
			case success, ok := <-asyncProducer.Successes():
				if !ok {
					return
				}

				log.Debug("successfully sent message", logger.String("topic", success.Topic))
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Producer{
		log:      log,
		topic:    topic,
		events:   events,
		producer: asyncProducer,
	}, nil
}

// ProduceEvents drains the event channel into the topic until the
// channel closes or the context is done.
func (p *Producer) ProduceEvents(ctx context.Context) {
	const op = "brokers.kafka.producer.ProduceEvents"

ProducerLoop:
	for {
		select {
		case event, ok := <-p.events:
			if !ok {
				break ProducerLoop
			}

			bytes, err := json.Marshal(event)
			if err != nil {
				p.log.Error(op, logger.Err(err))
				continue
			}

			p.producer.Input() <- &sarama.ProducerMessage{
				Topic: p.topic,
				Key:   sarama.StringEncoder(event.UUID()),
				Value: sarama.ByteEncoder(bytes),
			}

			p.log.Debug(op,
				logger.String("topic", p.topic),
				logger.String("event", event.EventType()))
		case <-ctx.Done():
			break ProducerLoop
		}
	}
}

func (p *Producer) Close() error {
	close(p.producer.Input())

	return p.producer.Close()
}
