package pipeline

import (
	"fmt"
	"path/filepath"

	"encsweep/internal/model"
	"encsweep/internal/util"
)

// DefaultContainerExt is used when the source path has no extension.
const DefaultContainerExt = ".mp4"

// Expand returns the cross product of the three sweep axes. Resolution is the
// outermost loop and quality factor the innermost, so for inputs
// [720p 480p] × [30] × [20 40] the order is
// 720p/30/20, 720p/30/40, 480p/30/20, 480p/30/40.
// Empty axes produce an empty sweep. Repeated axis values ("30" and "30.0",
// "0" and "src") collapse to their first occurrence, so every config maps to
// its own output path.
func Expand(resolutions []model.Resolution, frameRates []float64, qualityFactors []int, audio bool) ([]model.EncodeConfig, error) {
	resolutions = uniq(resolutions, model.Resolution.Token)
	frameRates = uniq(frameRates, func(f float64) float64 { return f })
	qualityFactors = uniq(qualityFactors, func(q int) int { return q })

	out := make([]model.EncodeConfig, 0, len(resolutions)*len(frameRates)*len(qualityFactors))
	for _, res := range resolutions {
		for _, fps := range frameRates {
			for _, crf := range qualityFactors {
				cfg, err := model.NewEncodeConfig(res, fps, crf, audio)
				if err != nil {
					return nil, err
				}
				out = append(out, cfg)
			}
		}
	}
	return out, nil
}

func uniq[T any, K comparable](in []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		k := key(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// BuildJobs pairs every config with the shared source and its output path.
// Job i corresponds to configs[i].
func BuildJobs(stat *model.SourceStat, configs []model.EncodeConfig, outDir string) []model.Job {
	jobs := make([]model.Job, len(configs))
	for i, cfg := range configs {
		jobs[i] = model.Job{
			ID:         fmt.Sprintf("job-%d", i+1),
			Index:      i,
			Source:     stat,
			Config:     cfg,
			OutputPath: OutputPath(stat.Path, cfg, outDir),
		}
	}
	return jobs
}

// OutputPath derives "<outDir>/<stem><suffix><ext>" for cfg. An empty outDir
// places outputs next to the source.
func OutputPath(sourcePath string, cfg model.EncodeConfig, outDir string) string {
	stem, ext := util.SplitExt(sourcePath)
	if ext == "" {
		ext = DefaultContainerExt
	}
	if outDir == "" {
		outDir = filepath.Dir(sourcePath)
	}
	return filepath.Join(outDir, stem+cfg.FileSuffix()+ext)
}
