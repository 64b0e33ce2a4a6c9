package txsign

import (
	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXSG")
