// Package checkbody проверяет наличие обязательных полей в теле запроса.
//
// Проверка работает по значениям уже разобранного JSON: поле не проходит,
// если оно отсутствует, равно null или является строкой, пустой после
// обрезки пробелов. Числовой ноль, массивы и объекты проходят.
package checkbody

import "strings"

// Check возвращает true, только если каждое имя из keys присутствует
// в body и проходит проверку. Частичного зачёта нет.
func Check(body map[string]any, keys []string) bool {
	for _, key := range keys {
		value, ok := body[key]
		if !ok || value == nil {
			return false
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
