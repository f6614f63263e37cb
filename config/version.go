package config

const DevVersion = "dev"

var (
	Version = DevVersion
)

func IsDevVersion() bool {
	return Version == DevVersion
}
