package channel

import "path/filepath"

// ControlDir is the well-known directory under the card mount that holds
// the control files.
const ControlDir = "EyeFi"

// ID names one of the four logical channels.
type ID int

const (
	RequestControl ID = iota
	RequestPayload
	ResponseControl
	ResponsePayload
)

var channelFiles = map[ID]string{
	RequestControl:  "reqc",
	RequestPayload:  "reqm",
	ResponseControl: "rspc",
	ResponsePayload: "rspm",
}

func (id ID) String() string {
	if name, ok := channelFiles[id]; ok {
		return name
	}
	return "invalid"
}

// Paths holds the four resolved control file paths for one mount point.
type Paths struct {
	RequestControl  string
	RequestPayload  string
	ResponseControl string
	ResponsePayload string
}

// Resolve maps the four channels to paths under mnt's control directory.
func Resolve(mnt string) Paths {
	dir := filepath.Join(mnt, ControlDir)
	return Paths{
		RequestControl:  filepath.Join(dir, channelFiles[RequestControl]),
		RequestPayload:  filepath.Join(dir, channelFiles[RequestPayload]),
		ResponseControl: filepath.Join(dir, channelFiles[ResponseControl]),
		ResponsePayload: filepath.Join(dir, channelFiles[ResponsePayload]),
	}
}

// For returns the path for one channel id.
func (p Paths) For(id ID) string {
	switch id {
	case RequestControl:
		return p.RequestControl
	case RequestPayload:
		return p.RequestPayload
	case ResponseControl:
		return p.ResponseControl
	default:
		return p.ResponsePayload
	}
}
