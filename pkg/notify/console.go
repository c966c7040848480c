package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/noah-isme/learning-tracker/internal/models"
)

// ConsoleDeliverer prints rendered notices, one per block, to a writer.
type ConsoleDeliverer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleDeliverer builds a deliverer writing to out.
func NewConsoleDeliverer(out io.Writer) *ConsoleDeliverer {
	return &ConsoleDeliverer{out: out}
}

// Deliver implements Deliverer.
func (d *ConsoleDeliverer) Deliver(_ context.Context, notice models.CompletionNotice) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := fmt.Fprintln(d.out, Render(notice)); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	return nil
}
