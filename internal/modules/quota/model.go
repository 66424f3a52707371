// README: Extraction quota errors and defaults.
package quota

import "errors"

// ErrInsufficientCredits is returned when a user has no extraction credits
// remaining for the current month.
var ErrInsufficientCredits = errors.New("insufficient extraction credits")

// DefaultCredits is the number of LLM extraction calls granted per month.
const DefaultCredits = 200
