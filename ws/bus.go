package ws

import (
	"context"

	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/services"
)

// Bus carries rating events between instances.
type Bus interface {
	Publish(ctx context.Context, ev services.RatingEvent) error
	StartForwarder(ctx context.Context, onEvent func(services.RatingEvent)) error
	Close() error
}

// Publisher hands rating events to the bus when there is one, otherwise
// straight to the local hub.
type Publisher struct {
	hub *FeedHub
	bus Bus
	log *logger.Logger
}

func NewPublisher(hub *FeedHub, bus Bus, log *logger.Logger) *Publisher {
	return &Publisher{hub: hub, bus: bus, log: log.With("service", "FeedPublisher")}
}

func (p *Publisher) PublishRating(ctx context.Context, ev services.RatingEvent) {
	if p.bus == nil {
		p.hub.Deliver(ev)
		return
	}
	if err := p.bus.Publish(ctx, ev); err != nil {
		p.log.Warn("bus publish failed, delivering locally", "channel", ev.Channel(), "error", err)
		p.hub.Deliver(ev)
	}
}

// Forward feeds bus events into the hub until ctx is done.
func (p *Publisher) Forward(ctx context.Context) error {
	if p.bus == nil {
		return nil
	}
	return p.bus.StartForwarder(ctx, p.hub.Deliver)
}
