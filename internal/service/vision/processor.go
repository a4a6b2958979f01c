package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

// minImagePayload is the smallest base64 payload that could plausibly
// carry an image; anything shorter is rejected without an oracle call.
const minImagePayload = 100

// Processor validates an attached image and asks the vision oracle to
// describe it in terms of the student's question. Every failure mode
// resolves to "no description" so the router can fall back to the raw
// query text.
type Processor struct {
	describer core.Describer
}

func NewProcessor(describer core.Describer) *Processor {
	return &Processor{describer: describer}
}

// Describe returns the image description and true, or "" and false when
// the payload is invalid, the oracle is unavailable, fails, or answers
// with nothing.
func (p *Processor) Describe(ctx context.Context, imageData, hintQuery string) (string, bool) {
	logger := log.FromCtx(ctx)

	if p.describer == nil {
		logger.Debug().Msg("no vision oracle configured, skipping image description")
		return "", false
	}

	if err := validatePayload(imageData); err != nil {
		logger.Warn().Err(err).Msg("invalid image payload, using original query")
		return "", false
	}

	description, err := p.describer.Describe(ctx, imageData, hintQuery)
	if err != nil {
		logger.Warn().Err(err).Msg("image description failed, using original query")
		return "", false
	}

	description = strings.TrimSpace(description)
	if description == "" {
		logger.Warn().Msg("image description came back empty")
		return "", false
	}

	logger.Debug().Int("length", len(description)).Msg("image described")
	return description, true
}

// validatePayload cheaply screens the payload before the oracle call:
// a base64 prefix decode catches non-image garbage without buffering
// the whole image.
func validatePayload(data string) error {
	if data == "" {
		return errors.New("image payload is empty")
	}
	if len(data) < minImagePayload {
		return fmt.Errorf("image payload too small: %d chars", len(data))
	}
	if _, err := base64.StdEncoding.DecodeString(data[:minImagePayload]); err != nil {
		return fmt.Errorf("image payload is not base64: %w", err)
	}
	return nil
}
