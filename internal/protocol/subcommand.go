package protocol

// Operation codes carried in the first byte of a control record. The card
// firmware distinguishes info queries from config commands by case.
const (
	OpQuery byte = 'o'
	OpSet   byte = 'O'
)

// Subcommand identifies which card attribute or setting a request concerns.
type Subcommand uint8

const (
	MacAddressSub      Subcommand = 1
	FirmwareInfo       Subcommand = 2
	CardKey            Subcommand = 3
	APIURL             Subcommand = 4
	Unknown5           Subcommand = 5
	Unknown6           Subcommand = 6
	LogLen             Subcommand = 7
	WLANDisable        Subcommand = 10
	UploadPending      Subcommand = 11
	HotspotEnable      Subcommand = 12
	ConnectedTo        Subcommand = 13
	UploadStatus       Subcommand = 14
	Unknown15          Subcommand = 15
	TransferModeSub    Subcommand = 17
	Endless            Subcommand = 27
	DirectModeSSID     Subcommand = 0x22
	DirectModePass     Subcommand = 0x23
	DirectWaitForConn  Subcommand = 0x24
	DirectWaitAfterXfr Subcommand = 0x25
	UploadKey          Subcommand = 0xfd
	UnknownFF          Subcommand = 0xff
)

var subcommandNames = map[Subcommand]string{
	MacAddressSub:      "mac_address",
	FirmwareInfo:       "firmware_info",
	CardKey:            "card_key",
	APIURL:             "api_url",
	Unknown5:           "unknown_5",
	Unknown6:           "unknown_6",
	LogLen:             "log_len",
	WLANDisable:        "wlan_disable",
	UploadPending:      "upload_pending",
	HotspotEnable:      "hotspot_enable",
	ConnectedTo:        "connected_to",
	UploadStatus:       "upload_status",
	Unknown15:          "unknown_15",
	TransferModeSub:    "transfer_mode",
	Endless:            "endless",
	DirectModeSSID:     "direct_mode_ssid",
	DirectModePass:     "direct_mode_pass",
	DirectWaitForConn:  "direct_wait_for_connection",
	DirectWaitAfterXfr: "direct_wait_after_transfer",
	UploadKey:          "upload_key",
	UnknownFF:          "unknown_ff",
}

func (s Subcommand) String() string {
	if name, ok := subcommandNames[s]; ok {
		return name
	}
	return "invalid"
}

// Known reports whether s is one of the enumerated subcommand codes.
func (s Subcommand) Known() bool {
	_, ok := subcommandNames[s]
	return ok
}

// TransferMode selects how the card decides which photos to upload.
type TransferMode uint8

const (
	AutoTransfer      TransferMode = 0
	SelectiveTransfer TransferMode = 1
	SelectiveShare    TransferMode = 2
)

func (m TransferMode) String() string {
	switch m {
	case AutoTransfer:
		return "auto"
	case SelectiveTransfer:
		return "selective"
	case SelectiveShare:
		return "share"
	default:
		return "invalid"
	}
}

// NetType and NetPasswordType are carried as wire vocabulary for network
// records the card reports; key derivation itself is out of scope.
type NetType uint8

const (
	NetUnsecured NetType = 0
	NetWEP       NetType = 1
	NetWPA       NetType = 2
	NetWPA2      NetType = 3
)

type NetPasswordType uint8

const (
	NetPasswordASCII NetPasswordType = 0
	NetPasswordRaw   NetPasswordType = 1
)
