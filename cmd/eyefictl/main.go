package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/eyefictl/internal/mount"
	"github.com/danmuck/eyefictl/internal/observability"
	"github.com/danmuck/eyefictl/internal/protocol"
	"github.com/danmuck/eyefictl/internal/protocol/session"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		mountPath  = flag.String("mount", "", "card mount point, skips the volume scan")

		showMAC       = flag.Bool("mac", false, "print the card MAC address")
		showFirmware  = flag.Bool("firmware", false, "print the card firmware info")
		showAPIURL    = flag.Bool("apiurl", false, "print the upload API URL")
		showLogLen    = flag.Bool("loglen", false, "print the card log length")
		showCardKey   = flag.Bool("card-key", false, "print the card key")
		showUploadKey = flag.Bool("upload-key", false, "print the upload key")
		runTest       = flag.Bool("test", false, "probe card liveness")

		transferMode = flag.String("transfer-mode", "", "set transfer mode: auto, selective, or share")
		endless      = flag.Int("endless", -1, "set endless-mode value")
		wlan         = flag.String("wlan", "", "set the card radio: on or off")

		showMetrics = flag.Bool("metrics", false, "dump protocol metrics after running")
	)
	flag.Parse()

	observability.InitLogger("eyefictl")

	cfg := session.DefaultConfig()
	fixedMount := *mountPath
	if *configPath != "" {
		fileCfg, cfgMount, err := loadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
		cfg = fileCfg
		if fixedMount == "" {
			fixedMount = cfgMount
		}
	}

	var locator mount.Locator = mount.NewCardLocator()
	if fixedMount != "" {
		locator = mount.Fixed(fixedMount)
	}

	s := session.New(locator, cfg)
	if err := s.Init(); err != nil {
		if errors.Is(err, session.ErrCardNotPresent) {
			log.Error().Msg("card not present")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("session init failed")
	}
	log.Info().Str("mount", s.Mount()).Msg("card located")

	if err := run(s, flags{
		mac: *showMAC, firmware: *showFirmware, apiURL: *showAPIURL,
		logLen: *showLogLen, cardKey: *showCardKey, uploadKey: *showUploadKey,
		test: *runTest, transferMode: *transferMode, endless: *endless, wlan: *wlan,
	}); err != nil {
		log.Fatal().Err(err).Msg("card operation failed")
	}

	if *showMetrics {
		if _, err := observability.SampleMajorFaults(); err != nil {
			log.Warn().Err(err).Msg("page fault sampling failed")
		}
		if err := observability.DumpMetrics(os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("metrics dump failed")
		}
	}
}

type flags struct {
	mac, firmware, apiURL, logLen, cardKey, uploadKey, test bool

	transferMode string
	endless      int
	wlan         string
}

func run(s *session.Session, f flags) error {
	if f.test {
		if err := s.TestBasic(); err != nil {
			return err
		}
		fmt.Println("card responds")
	}
	if f.mac {
		mac, err := s.MAC()
		if err != nil {
			return err
		}
		fmt.Printf("mac: %02x:%02x:%02x:%02x:%02x:%02x\n",
			mac.MAC[0], mac.MAC[1], mac.MAC[2], mac.MAC[3], mac.MAC[4], mac.MAC[5])
	}
	if f.firmware {
		fw, err := s.Firmware()
		if err != nil {
			return err
		}
		fmt.Printf("firmware: %s\n", fw.Info)
	}
	if f.apiURL {
		u, err := s.APIURL()
		if err != nil {
			return err
		}
		fmt.Printf("api url: %s\n", u.Key)
	}
	if f.logLen {
		l, err := s.LogLen()
		if err != nil {
			return err
		}
		fmt.Printf("log len: %d (val %d)\n", l.LogLen, l.Val)
	}
	if f.cardKey {
		k, err := s.CardKey()
		if err != nil {
			return err
		}
		fmt.Printf("card key: %s\n", k.Key)
	}
	if f.uploadKey {
		k, err := s.UploadKey()
		if err != nil {
			return err
		}
		fmt.Printf("upload key: %s\n", k.Key)
	}

	if f.transferMode != "" {
		mode, err := parseTransferMode(f.transferMode)
		if err != nil {
			return err
		}
		if err := s.SetTransferMode(mode); err != nil {
			return err
		}
		fmt.Printf("transfer mode set: %s\n", mode)
	}
	if f.endless >= 0 {
		if f.endless > 0xff {
			return fmt.Errorf("endless value out of range: %d", f.endless)
		}
		if err := s.SetEndless(uint8(f.endless)); err != nil {
			return err
		}
		fmt.Printf("endless set: %d\n", f.endless)
	}
	if f.wlan != "" {
		disabled, err := parseWLAN(f.wlan)
		if err != nil {
			return err
		}
		if err := s.SetWLANDisabled(disabled); err != nil {
			return err
		}
		fmt.Printf("wlan: %s\n", f.wlan)
	}
	return nil
}

func parseTransferMode(raw string) (protocol.TransferMode, error) {
	switch raw {
	case "auto":
		return protocol.AutoTransfer, nil
	case "selective":
		return protocol.SelectiveTransfer, nil
	case "share":
		return protocol.SelectiveShare, nil
	default:
		return 0, fmt.Errorf("unknown transfer mode %q", raw)
	}
}

func parseWLAN(raw string) (bool, error) {
	switch raw {
	case "off":
		return true, nil
	case "on":
		return false, nil
	default:
		return false, fmt.Errorf("wlan must be on or off, got %q", raw)
	}
}
