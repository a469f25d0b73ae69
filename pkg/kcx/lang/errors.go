package lang

import (
	"fmt"

	"github.com/cognicore/kcx/pkg/kcx/internalerr"
)

// ErrNoModel is reported when model classification is requested but no
// model is configured.
var ErrNoModel = fmt.Errorf("no model configured: %w", internalerr.ErrModelUnavailable)
