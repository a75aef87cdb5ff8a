package annotate

import (
	"fmt"

	"scribe/internal/services"
)

// Locate finds the next occurrence of token in buffer at or after cursor and
// returns its start and end offsets. Offsets are rune positions, not bytes, so
// they survive multi-byte transcripts. A miss means the model's full text and
// its per-word output disagree, which is a data-consistency failure rather
// than something to paper over.
func Locate(buffer []rune, cursor int, token string) (start, end int, err error) {
	runes := []rune(token)
	if len(runes) == 0 {
		return 0, 0, services.Wrap(services.ErrDataConsistency, "annotate", "locate", "empty token", nil)
	}
	if cursor < 0 {
		cursor = 0
	}
	for i := cursor; i+len(runes) <= len(buffer); i++ {
		if matchAt(buffer, i, runes) {
			return i, i + len(runes), nil
		}
	}
	return 0, 0, services.Wrap(services.ErrDataConsistency, "annotate", "locate",
		fmt.Sprintf("token %q not found at or after offset %d", token, cursor), nil)
}

func matchAt(buffer []rune, at int, token []rune) bool {
	for j, r := range token {
		if buffer[at+j] != r {
			return false
		}
	}
	return true
}
