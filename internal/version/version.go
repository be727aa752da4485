package version

var (
	Version  = "dev"
	Revision = "unknown"
)

func GetReleaseInfo() (string, string) {
	return Version, Revision
}
