package steps

import (
	"github.com/ni/nilrt-snac/internal/configfile"
	"github.com/ni/nilrt-snac/internal/console"
	"github.com/ni/nilrt-snac/internal/logging"
	"github.com/ni/nilrt-snac/internal/opkg"
)

var opkgLog = logging.New("snac.opkg-feeds")

// OpkgFeedsStep locks down the opkg feed configuration: autoremove on,
// vendor distribution feed removed, extra feeds disabled.
type OpkgFeedsStep struct {
	SnacConfPath  string
	BaseFeedsPath string
	NIDistPath    string
}

func (s *OpkgFeedsStep) Name() string { return "opkg" }

func (s *OpkgFeedsStep) snacConf() string {
	if s.SnacConfPath != "" {
		return s.SnacConfPath
	}
	return opkg.SnacConfPath
}

func (s *OpkgFeedsStep) baseFeeds() string {
	if s.BaseFeedsPath != "" {
		return s.BaseFeedsPath
	}
	return "/etc/opkg/base-feeds.conf"
}

func (s *OpkgFeedsStep) niDist() string {
	if s.NIDistPath != "" {
		return s.NIDistPath
	}
	return "/etc/opkg/NI-dist.conf"
}

func (s *OpkgFeedsStep) Configure(ctx *Context) error {
	console.Println("Configuring opkg...")
	snacConf := configfile.Load(s.snacConf())
	baseFeeds := configfile.Load(s.baseFeeds())

	if !snacConf.Contains("option autoremove 1") {
		snacConf.Add("\n# NILRT SNAC configuration opkg runparts. Do not hand-edit.\noption autoremove 1\n")
	}

	if ctx.Sys.PathExists(s.niDist()) {
		opkgLog.Debug("Removing unsupported package feeds...")
		if !ctx.DryRun {
			if err := ctx.Sys.Remove(s.niDist()); err != nil {
				return err
			}
		}
	}

	if baseFeeds.Contains(`^src.*/extra/.*`) {
		baseFeeds.Update(`^src.*/extra/.*`, "")
	}

	if err := snacConf.Save(ctx.DryRun); err != nil {
		return err
	}
	if err := baseFeeds.Save(ctx.DryRun); err != nil {
		return err
	}
	return ctx.Opkg.Update()
}

func (s *OpkgFeedsStep) Verify(ctx *Context) bool {
	console.Println("Verifying opkg configuration...")
	snacConf := configfile.Load(s.snacConf())
	baseFeeds := configfile.Load(s.baseFeeds())
	valid := true
	if !snacConf.Exists() {
		valid = false
		opkgLog.Errorf("MISSING: %s not found", s.snacConf())
	}
	if !snacConf.Contains("option autoremove 1") {
		valid = false
		opkgLog.Errorf("MISSING: 'option autoremove 1' not found in %s", s.snacConf())
	}
	if baseFeeds.Contains(`^src.*/extra/.*`) {
		valid = false
		opkgLog.Errorf("FOUND: extra package feeds enabled in %s", s.baseFeeds())
	}
	return valid
}
