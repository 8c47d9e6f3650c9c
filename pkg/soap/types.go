package soap

// Version represents the SOAP protocol version.
type Version string

const (
	// SOAP11 represents SOAP 1.1 protocol.
	SOAP11 Version = "1.1"
	// SOAP12 represents SOAP 1.2 protocol.
	SOAP12 Version = "1.2"
)

// SOAP namespace URIs
const (
	SOAP11Namespace = "http://schemas.xmlsoap.org/soap/envelope/"
	SOAP12Namespace = "http://www.w3.org/2003/05/soap-envelope"
)

// ContentTypes for SOAP versions
const (
	SOAP11ContentType = "text/xml; charset=utf-8"
	SOAP12ContentType = "application/soap+xml; charset=utf-8"
)

// ContentType returns the request Content-Type for the version.
func (v Version) ContentType() string {
	if v == SOAP12 {
		return SOAP12ContentType
	}
	return SOAP11ContentType
}

// Namespace returns the envelope namespace URI for the version.
func (v Version) Namespace() string {
	if v == SOAP12 {
		return SOAP12Namespace
	}
	return SOAP11Namespace
}

// Fault is a SOAP fault extracted from a response envelope.
type Fault struct {
	Code    string
	Message string
	Detail  string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Code == "" {
		return "soap fault: " + f.Message
	}
	return "soap fault " + f.Code + ": " + f.Message
}
