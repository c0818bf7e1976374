package resource

import (
	"context"
	"fmt"

	"github.com/afex/hystrix-go/hystrix"
)

// HystrixConf configures the circuit breaker of a storage handler.
type HystrixConf struct {
	// Timeout is how long to wait for a command to complete, in milliseconds.
	Timeout int
	// MaxConcurrentRequests is how many commands of the same type can run at
	// the same time.
	MaxConcurrentRequests int
	// ErrorPercentThreshold causes circuits to open once the rolling measure of
	// errors exceeds this percent of requests.
	ErrorPercentThreshold int
}

type hystrixStorage struct {
	findCmd   string
	insertCmd string
	storage   Storer
}

// WrapHystrix wraps a storage handler so its operations run as hystrix
// commands named after the resource (i.e.: users.Find).
func WrapHystrix(name string, s Storer) Storer {
	return hystrixStorage{
		findCmd:   fmt.Sprintf("%s.Find", name),
		insertCmd: fmt.Sprintf("%s.Insert", name),
		storage:   s,
	}
}

// ConfigureHystrix sets the circuit breaker settings of the commands of the
// resource name.
func ConfigureHystrix(name string, c HystrixConf) {
	conf := hystrix.CommandConfig{
		Timeout:               c.Timeout,
		MaxConcurrentRequests: c.MaxConcurrentRequests,
		ErrorPercentThreshold: c.ErrorPercentThreshold,
	}
	hystrix.ConfigureCommand(fmt.Sprintf("%s.Find", name), conf)
	hystrix.ConfigureCommand(fmt.Sprintf("%s.Insert", name), conf)
}

func (h hystrixStorage) Find(ctx context.Context, p *Plan) (list *ItemList, err error) {
	out := make(chan *ItemList, 1)
	errs := hystrix.Go(h.findCmd, func() error {
		list, err := h.storage.Find(ctx, p)
		if err == nil {
			out <- list
		}
		return err
	}, nil)
	select {
	case list = <-out:
	case err = <-errs:
	case <-ctx.Done():
		err = ctx.Err()
	}
	return
}

func (h hystrixStorage) Insert(ctx context.Context, items []*Item) error {
	i, ok := h.storage.(Inserter)
	if !ok {
		return ErrNotImplemented
	}
	return hystrix.Do(h.insertCmd, func() error {
		return i.Insert(ctx, items)
	}, nil)
}
