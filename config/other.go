package config

import (
	"github.com/ipfs/go-log/v2"
)

var logger = log.Logger("lightmusic/config")
