package driver

import (
	"encoding/json"
	"fmt"

	"phpdrift/internal/diag"
	"phpdrift/internal/observ"
	"phpdrift/internal/source"
)

// timingPayload — JSON-содержимое note внутри OBS6001.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "check"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	// Bag уже полон. Тайминги не должны теряться из-за лимита находок,
	// поэтому дописываем через Merge: он расширяет вместимость.
	overflow := diag.NewBag(len(bag.Items()) + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}

// TimingReport — расшифрованная сводка фаз из OBS6001 для человеческого
// вывода в CLI.
type TimingReport struct {
	Kind    string
	Path    string
	TotalMS float64
	Phases  []observ.PhaseReport
}

// DecodeTimings извлекает сводку фаз из диагностики OBS6001. Для любых
// других диагностик возвращает false.
func DecodeTimings(d diag.Diagnostic) (TimingReport, bool) {
	if d.Code != diag.ObsTimings || len(d.Notes) == 0 {
		return TimingReport{}, false
	}
	var payload timingPayload
	if err := json.Unmarshal([]byte(d.Notes[0].Msg), &payload); err != nil {
		return TimingReport{}, false
	}
	return TimingReport{
		Kind:    payload.Kind,
		Path:    payload.Path,
		TotalMS: payload.TotalMS,
		Phases:  payload.Phases,
	}, true
}
