package moqt

// NextProtoMOQ is the ALPN token a native QUIC connection negotiates to
// select the MOQ session protocol (as opposed to WebTransport, which
// negotiates h3 and layers MOQ on top of a CONNECT session instead).
const NextProtoMOQ = "moq-00"

// NextProtoH3 is the ALPN token HTTP/3 negotiates; MOQ over WebTransport
// rides on top of an h3 connection rather than getting its own ALPN token.
const NextProtoH3 = "h3"
