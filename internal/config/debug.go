package config

import "os"

func IsDebug() bool {
	return os.Getenv("HELPBUDDY_DEBUG") == "1"
}
