package crypto

import (
	"fmt"

	"github.com/olivia-oracle/olivia/olerrors"
)

var errMalformedSeed = fmt.Errorf("crypto: invalid scalar or point encoding: %w", olerrors.ErrMalformedSeed)
