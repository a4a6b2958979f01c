package scope

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

// curriculumKeywords short-circuit the scope decision. Any of these as a
// case-insensitive substring marks the query in-scope without spending
// an oracle call.
var curriculumKeywords = []string{
	"science", "physics", "chemistry", "biology", "ncert", "class 8",
	"experiment", "theory", "concept", "lesson", "chapter", "textbook",
	"force", "pressure", "friction", "sound", "light", "electricity",
	"magnet", "cell", "reproduction", "adolescence", "crop", "microorganism",
	"fiber", "plastic", "metal", "coal", "petroleum", "combustion",
	"conservation", "pollution", "solar system", "star", "natural phenomenon",
	"kharif", "rabi", "agriculture", "farming", "plant", "seed", "soil",
	"fertilizer", "pesticide", "irrigation", "harvest", "grain", "wheat",
	"rice", "maize", "pulse", "vegetable", "fruit", "flower",
}

const oraclePrompt = `You are a helpful assistant checking if a student's question is relevant to NCERT Science Class 8 curriculum.

IMPORTANT: Be very permissive. If the question could be related to any science topic, mark it as relevant.

Student's question: "%s"

Is this question relevant to NCERT Science Class 8 Science curriculum?
Consider topics like: physics, chemistry, biology, force, pressure, friction, sound, light, electricity, magnets, cells, reproduction, adolescence, crops, microorganisms, fibers, plastics, metals, coal, petroleum, combustion, conservation, pollution, solar system, stars, natural phenomena, agriculture, plants, soil, etc.

Respond with ONLY "YES" or "NO".`

// Classifier decides whether a processed query belongs to the corpus
// domain. The keyword table answers most traffic; the oracle handles
// the rest, and every ambiguous or failed oracle outcome resolves to
// in-scope: wrongly rejecting a student question costs more than
// answering a borderline one.
type Classifier struct {
	completer core.Completer
}

func NewClassifier(completer core.Completer) *Classifier {
	return &Classifier{completer: completer}
}

// IsInScope reports whether the query is answerable from the corpus,
// with a human-readable reason for the verdict.
func (c *Classifier) IsInScope(ctx context.Context, query string) (bool, string) {
	logger := log.FromCtx(ctx)
	q := strings.ToLower(query)

	for _, kw := range curriculumKeywords {
		if strings.Contains(q, kw) {
			return true, fmt.Sprintf("contains curriculum keyword: %s", kw)
		}
	}

	logger.Debug().Msg("no keyword match, asking oracle for scope verdict")

	resp, err := c.completer.Complete(ctx, fmt.Sprintf(oraclePrompt, query))
	if err != nil {
		logger.Warn().Err(err).Msg("scope oracle failed, defaulting to in-scope")
		return true, "scope check failed, defaulting to in-scope"
	}

	switch verdict := strings.ToUpper(strings.TrimSpace(resp)); verdict {
	case "YES":
		return true, "oracle verdict: YES"
	case "NO":
		return false, "oracle verdict: NO"
	default:
		logger.Warn().Str("verdict", verdict).Msg("scope oracle answer unclear, defaulting to in-scope")
		return true, "oracle answer unclear, defaulting to in-scope"
	}
}

// RefusalMessage is the deterministic rejection for out-of-scope
// queries. It never consults the oracle.
func (c *Classifier) RefusalMessage(originalQuery string) string {
	return fmt.Sprintf("I'm sorry, but '%s' is outside the scope of NCERT Science Class 8. "+
		"I can help you with topics like crop production, microorganisms, materials, force, "+
		"pressure, sound, light, and environmental science. "+
		"Please ask me about any NCERT Science Class 8 topics!", originalQuery)
}
