package broker

import "context"

//go:generate mockgen -source=./broker.go -destination=../mocks/broker/mock.go -package=brokermocks

type Producer interface {
	SendMessage(ctx context.Context, value []byte) error
}

// NoopProducer is used when publishing is disabled.
type NoopProducer struct{}

func (NoopProducer) SendMessage(context.Context, []byte) error {
	return nil
}
