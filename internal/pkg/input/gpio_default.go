//go:build !arm && !arm64

package input

import (
	"context"
	"errors"
	"time"
)

type GPIOButtons struct{}

func NewGPIOButtons() (*GPIOButtons, error) {
	return nil, errors.New("hardware not supported")
}

func (b *GPIOButtons) Run(ctx context.Context, rate time.Duration, samples chan<- Sample) {}
