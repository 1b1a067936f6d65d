package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/pkg/breaker"
)

// Lifecycle events emitted after a committed state change. Consumers
// (notifications, stats) are external; publishing is best-effort and never
// fails the triggering operation.
const (
	TypeLoanCreated        = "loan.created"
	TypeLoanReturned       = "loan.returned"
	TypeFineIssued         = "fine.issued"
	TypeFinePaid           = "fine.paid"
	TypeReservationCreated = "reservation.created"
	TypeReservationClosed  = "reservation.closed"
)

type Event struct {
	Type       string    `json:"type"`
	EntityUid  string    `json:"entityUid"`
	StudentUid string    `json:"studentUid,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(event Event)
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       breaker.Breaker
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		// a down broker must not stall request handling on sync sends
		cb:  breaker.New(10, 30*time.Second, 0.5, 3),
		log: log.Named("events"),
	}
}

func (p *kafkaPublisher) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal event", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{Topic: p.topic, Value: sarama.StringEncoder(data)}
	err = p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		p.log.Error("publish event", zap.String("type", event.Type), zap.Error(err))
	}
}

type nopPublisher struct{}

// NewNopPublisher is used when no brokers are configured.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(Event) {}
