package event

import "context"

// NoopPublisher is used when messaging is disabled in configuration.
type NoopPublisher struct{}

var _ EventPublisher = (*NoopPublisher)(nil)

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return nil
}

func (p *NoopPublisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	return nil
}

func (p *NoopPublisher) PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error {
	return nil
}

func (p *NoopPublisher) PublishCreditCreated(ctx context.Context, event CreditCreatedEvent) error {
	return nil
}
