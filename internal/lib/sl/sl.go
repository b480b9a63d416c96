// Package sl дополняет slog мелкими помощниками, общими для всех слоёв.
package sl

import "log/slog"

// Err кладёт текст ошибки в атрибут с ключом "error", чтобы записи
// об ошибках во всех обработчиках и сервисах выглядели одинаково:
//
//	log.Error("failed to create event", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
