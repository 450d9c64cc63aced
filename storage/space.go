package storage

import (
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/disk"

	"transfer-agent/contract"
)

// Ensure *SpaceChecker implements the contract at compile time.
var _ contract.ISpaceChecker = (*SpaceChecker)(nil)

// SpaceChecker performs the pre-flight free-space test for one destination
// volume: a copy may start only when free space covers the source size plus
// the configured safety margin.
type SpaceChecker struct {
	log          *slog.Logger
	root         string
	safetyMargin uint64

	// usage is swappable for tests; defaults to gopsutil's disk.Usage.
	usage func(path string) (*disk.UsageStat, error)
}

func NewSpaceChecker(log *slog.Logger, root string, safetyMargin uint64) *SpaceChecker {
	return &SpaceChecker{
		log:          log,
		root:         root,
		safetyMargin: safetyMargin,
		usage:        disk.Usage,
	}
}

// Check reports whether fileSize bytes (plus the safety margin) fit on the
// destination volume right now.
func (s *SpaceChecker) Check(fileSize uint64) (contract.SpaceCheck, error) {
	stat, err := s.usage(s.root)
	if err != nil {
		return contract.SpaceCheck{
			HasSpace:      false,
			RequiredBytes: fileSize + s.safetyMargin,
			Reason:        fmt.Sprintf("destination not accessible: %v", err),
		}, err
	}

	required := fileSize + s.safetyMargin
	check := contract.SpaceCheck{
		HasSpace:       stat.Free >= required,
		AvailableBytes: stat.Free,
		RequiredBytes:  required,
	}
	if !check.HasSpace {
		check.Reason = fmt.Sprintf("need %d bytes (incl. %d margin), %d free", required, s.safetyMargin, stat.Free)
		s.log.Warn("Insufficient destination space", "required", required, "free", stat.Free)
	}
	return check, nil
}
