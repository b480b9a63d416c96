// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ несёт
// булево поле result; при неуспехе добавляется человекочитаемый текст
// в error или message.
package response

// Response описывает стандартную структуру JSON‑ответа сервера.
type Response struct {
	Result  bool   `json:"result"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err возвращает Response с result:false и текстом в поле error.
func Err(msg string) Response {
	return Response{
		Result: false,
		Error:  msg,
	}
}

// ErrMessage возвращает Response с result:false и текстом в поле message.
func ErrMessage(msg string) Response {
	return Response{
		Result:  false,
		Message: msg,
	}
}

// OK возвращает Response с result:true и сообщением.
func OK(msg string) Response {
	return Response{
		Result:  true,
		Message: msg,
	}
}
