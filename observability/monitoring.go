package observability

import (
	"sync/atomic"
	"time"

	"transfer-agent/domain"
)

// PipelineStats is the point-in-time metrics snapshot handed to the reporter
// worker and to any external UI.
type PipelineStats struct {
	FilesDiscovered uint64                    `json:"files_discovered"`
	FilesCompleted  uint64                    `json:"files_completed"`
	FilesFailed     uint64                    `json:"files_failed"`
	FilesRemoved    uint64                    `json:"files_removed"`
	BytesCopied     uint64                    `json:"bytes_copied"`
	CopyErrors      uint64                    `json:"copy_errors"`
	ScanCycles      uint64                    `json:"scan_cycles"`
	CountsByStatus  map[domain.FileStatus]int `json:"counts_by_status"`
	CollectedAt     time.Time                 `json:"collected_at"`
}

// MonitoringManager aggregates pipeline counters. All increments are atomic
// so the scan loop, every copy worker and the bridge can report without
// coordination.
type MonitoringManager struct {
	filesDiscovered atomic.Uint64
	filesCompleted  atomic.Uint64
	filesFailed     atomic.Uint64
	filesRemoved    atomic.Uint64
	bytesCopied     atomic.Uint64
	copyErrors      atomic.Uint64
	scanCycles      atomic.Uint64
}

func NewMonitoringManager() *MonitoringManager {
	return &MonitoringManager{}
}

func (m *MonitoringManager) IncrFilesDiscovered()    { m.filesDiscovered.Add(1) }
func (m *MonitoringManager) IncrFilesCompleted()     { m.filesCompleted.Add(1) }
func (m *MonitoringManager) IncrFilesFailed()        { m.filesFailed.Add(1) }
func (m *MonitoringManager) IncrFilesRemoved()       { m.filesRemoved.Add(1) }
func (m *MonitoringManager) IncrCopyErrors()         { m.copyErrors.Add(1) }
func (m *MonitoringManager) IncrScanCycles()         { m.scanCycles.Add(1) }
func (m *MonitoringManager) AddBytesCopied(n uint64) { m.bytesCopied.Add(n) }

// Snapshot merges the atomic counters with the registry's per-status counts.
func (m *MonitoringManager) Snapshot(countsByStatus map[domain.FileStatus]int) PipelineStats {
	return PipelineStats{
		FilesDiscovered: m.filesDiscovered.Load(),
		FilesCompleted:  m.filesCompleted.Load(),
		FilesFailed:     m.filesFailed.Load(),
		FilesRemoved:    m.filesRemoved.Load(),
		BytesCopied:     m.bytesCopied.Load(),
		CopyErrors:      m.copyErrors.Load(),
		ScanCycles:      m.scanCycles.Load(),
		CountsByStatus:  countsByStatus,
		CollectedAt:     time.Now(),
	}
}
