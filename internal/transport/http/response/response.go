package response

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New never returns a null data field.
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error uses the default message for code unless customMsg is set.
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}
