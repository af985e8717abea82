package model

// FileCoverage holds documentation coverage for a single file.
type FileCoverage struct {
	FilePath            Path             `json:"filePath"`
	TotalFunctions      int              `json:"totalFunctions"`
	DocumentedFunctions int              `json:"documentedFunctions"`
	Undocumented        []FunctionRecord `json:"undocumented"`
}

// CoveragePercent returns the file's coverage ratio as a percentage.
func (f FileCoverage) CoveragePercent() float64 {
	return CoveragePercent(f.DocumentedFunctions, f.TotalFunctions)
}

// CoverageReport aggregates coverage over a file tree.
type CoverageReport struct {
	TotalFiles          int            `json:"totalFiles"`
	TotalFunctions      int            `json:"totalFunctions"`
	DocumentedFunctions int            `json:"documentedFunctions"`
	CoveragePercent     float64        `json:"coveragePercent"`
	PerFile             []FileCoverage `json:"perFile"`
}

// MeetsThreshold reports whether the project coverage reaches threshold.
func (r CoverageReport) MeetsThreshold(threshold float64) bool {
	return r.CoveragePercent >= threshold
}

// CoveragePercent is 100 for zero functions (vacuous coverage), otherwise
// 100*documented/total clamped to [0,100].
func CoveragePercent(documented, total int) float64 {
	if total <= 0 {
		return 100
	}

	pct := 100 * float64(documented) / float64(total)

	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
