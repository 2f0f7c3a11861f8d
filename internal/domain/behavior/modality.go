package behavior

import (
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
)

// Modality splits attention across visual, auditory and textual content.
// Accepted events decide the split; without any, dwell time does; with no
// dwell at all the split is even.
func Modality(log []model.EnrichedEvent) model.ModalityAffinity {
	var v, a, t, total float64
	for _, e := range log {
		if e.Action != types.ActionAccept {
			continue
		}
		total++
		addModality(e.ContentType, 1, &v, &a, &t)
	}
	if total > 0 {
		return model.ModalityAffinity{Visual: v / total, Auditory: a / total, Textual: t / total}
	}

	for _, e := range log {
		d := float64(e.DwellMs)
		total += d
		addModality(e.ContentType, d, &v, &a, &t)
	}
	if total > 0 {
		return model.ModalityAffinity{Visual: v / total, Auditory: a / total, Textual: t / total}
	}
	return model.ModalityAffinity{Visual: 0.33, Auditory: 0.33, Textual: 0.34}
}

func addModality(c types.ContentType, x float64, visual, auditory, textual *float64) {
	switch c {
	case types.ContentImage, types.ContentVideo:
		*visual += x
	case types.ContentSound:
		*auditory += x
	default:
		*textual += x
	}
}
