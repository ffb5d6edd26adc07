package version

type Version struct {
	Version string `json:"version"`
}

var current = "0.1.0"

func Get() Version {
	return Version{Version: current}
}
