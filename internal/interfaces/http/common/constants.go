package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 1 << 20
	// RequestTimeout bounds the persistence work of one request.
	RequestTimeout = 5 * time.Second
	// MaxPageLimit caps the page size of paginated lists.
	MaxPageLimit = 100

	MsgInvalidJSON = "El cuerpo de la solicitud no es JSON válido"
)
