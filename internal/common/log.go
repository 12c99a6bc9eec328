package common

import (
	"github.com/sirupsen/logrus"
)

// Logger receives warnings from the prime storage layer. Callers may adjust
// its level or output; the search path itself never logs.
var Logger = logrus.New()
