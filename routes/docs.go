package routes

import _ "embed"

// openapiDoc is served at /swagger/doc.json and rendered by the Swagger UI
// mounted at /swagger/.
//
//go:embed openapi.json
var openapiDoc []byte
