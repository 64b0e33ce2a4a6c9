package txfetcher

import (
	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXFT")
