package proto

import "google.golang.org/protobuf/encoding/protowire"

// StatusCode is the outcome reported in every response.
type StatusCode int32

const (
	StatusCodeSuccess StatusCode = 0
	StatusCodeFailure StatusCode = 1
)

func (c StatusCode) String() string {
	switch c {
	case StatusCodeSuccess:
		return "SUCCESS"
	case StatusCodeFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

type SignUpRequest struct {
	Username string
	Password string
}

func (m *SignUpRequest) GetUsername() string {
	if m == nil {
		return ""
	}
	return m.Username
}

func (m *SignUpRequest) GetPassword() string {
	if m == nil {
		return ""
	}
	return m.Password
}

func (m *SignUpRequest) marshalWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	return appendString(b, 2, m.Password)
}

func (m *SignUpRequest) unmarshalWire(b []byte) error {
	*m = SignUpRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.Username)
		case 2:
			return consumeString(num, typ, b, &m.Password)
		}
		return 0, nil
	})
}

type SignUpResponse struct {
	StatusCode StatusCode
}

func (m *SignUpResponse) GetStatusCode() StatusCode {
	if m == nil {
		return StatusCodeFailure
	}
	return m.StatusCode
}

func (m *SignUpResponse) marshalWire(b []byte) []byte {
	return appendVarint(b, 1, uint64(int64(m.StatusCode)))
}

func (m *SignUpResponse) unmarshalWire(b []byte) error {
	*m = SignUpResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeStatus(num, typ, b, &m.StatusCode)
		}
		return 0, nil
	})
}

type SignInRequest struct {
	Username string
	Password string
}

func (m *SignInRequest) GetUsername() string {
	if m == nil {
		return ""
	}
	return m.Username
}

func (m *SignInRequest) GetPassword() string {
	if m == nil {
		return ""
	}
	return m.Password
}

func (m *SignInRequest) marshalWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	return appendString(b, 2, m.Password)
}

func (m *SignInRequest) unmarshalWire(b []byte) error {
	*m = SignInRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.Username)
		case 2:
			return consumeString(num, typ, b, &m.Password)
		}
		return 0, nil
	})
}

type SignInResponse struct {
	StatusCode   StatusCode
	UserUuid     string
	SessionToken string
}

func (m *SignInResponse) GetStatusCode() StatusCode {
	if m == nil {
		return StatusCodeFailure
	}
	return m.StatusCode
}

func (m *SignInResponse) GetUserUuid() string {
	if m == nil {
		return ""
	}
	return m.UserUuid
}

func (m *SignInResponse) GetSessionToken() string {
	if m == nil {
		return ""
	}
	return m.SessionToken
}

func (m *SignInResponse) marshalWire(b []byte) []byte {
	b = appendVarint(b, 1, uint64(int64(m.StatusCode)))
	b = appendString(b, 2, m.UserUuid)
	return appendString(b, 3, m.SessionToken)
}

func (m *SignInResponse) unmarshalWire(b []byte) error {
	*m = SignInResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeStatus(num, typ, b, &m.StatusCode)
		case 2:
			return consumeString(num, typ, b, &m.UserUuid)
		case 3:
			return consumeString(num, typ, b, &m.SessionToken)
		}
		return 0, nil
	})
}

type SignOutRequest struct {
	SessionToken string
}

func (m *SignOutRequest) GetSessionToken() string {
	if m == nil {
		return ""
	}
	return m.SessionToken
}

func (m *SignOutRequest) marshalWire(b []byte) []byte {
	return appendString(b, 1, m.SessionToken)
}

func (m *SignOutRequest) unmarshalWire(b []byte) error {
	*m = SignOutRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(num, typ, b, &m.SessionToken)
		}
		return 0, nil
	})
}

type SignOutResponse struct {
	StatusCode StatusCode
}

func (m *SignOutResponse) GetStatusCode() StatusCode {
	if m == nil {
		return StatusCodeFailure
	}
	return m.StatusCode
}

func (m *SignOutResponse) marshalWire(b []byte) []byte {
	return appendVarint(b, 1, uint64(int64(m.StatusCode)))
}

func (m *SignOutResponse) unmarshalWire(b []byte) error {
	*m = SignOutResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeStatus(num, typ, b, &m.StatusCode)
		}
		return 0, nil
	})
}

type ValidateSessionRequest struct {
	SessionToken string
}

func (m *ValidateSessionRequest) GetSessionToken() string {
	if m == nil {
		return ""
	}
	return m.SessionToken
}

func (m *ValidateSessionRequest) marshalWire(b []byte) []byte {
	return appendString(b, 1, m.SessionToken)
}

func (m *ValidateSessionRequest) unmarshalWire(b []byte) error {
	*m = ValidateSessionRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(num, typ, b, &m.SessionToken)
		}
		return 0, nil
	})
}

type ValidateSessionResponse struct {
	StatusCode StatusCode
	UserUuid   string
}

func (m *ValidateSessionResponse) GetStatusCode() StatusCode {
	if m == nil {
		return StatusCodeFailure
	}
	return m.StatusCode
}

func (m *ValidateSessionResponse) GetUserUuid() string {
	if m == nil {
		return ""
	}
	return m.UserUuid
}

func (m *ValidateSessionResponse) marshalWire(b []byte) []byte {
	b = appendVarint(b, 1, uint64(int64(m.StatusCode)))
	return appendString(b, 2, m.UserUuid)
}

func (m *ValidateSessionResponse) unmarshalWire(b []byte) error {
	*m = ValidateSessionResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeStatus(num, typ, b, &m.StatusCode)
		case 2:
			return consumeString(num, typ, b, &m.UserUuid)
		}
		return 0, nil
	})
}

type DeleteAccountRequest struct {
	UserUuid string
}

func (m *DeleteAccountRequest) GetUserUuid() string {
	if m == nil {
		return ""
	}
	return m.UserUuid
}

func (m *DeleteAccountRequest) marshalWire(b []byte) []byte {
	return appendString(b, 1, m.UserUuid)
}

func (m *DeleteAccountRequest) unmarshalWire(b []byte) error {
	*m = DeleteAccountRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(num, typ, b, &m.UserUuid)
		}
		return 0, nil
	})
}

type DeleteAccountResponse struct {
	StatusCode      StatusCode
	RevokedSessions uint32
}

func (m *DeleteAccountResponse) GetStatusCode() StatusCode {
	if m == nil {
		return StatusCodeFailure
	}
	return m.StatusCode
}

func (m *DeleteAccountResponse) GetRevokedSessions() uint32 {
	if m == nil {
		return 0
	}
	return m.RevokedSessions
}

func (m *DeleteAccountResponse) marshalWire(b []byte) []byte {
	b = appendVarint(b, 1, uint64(int64(m.StatusCode)))
	return appendVarint(b, 2, uint64(m.RevokedSessions))
}

func (m *DeleteAccountResponse) unmarshalWire(b []byte) error {
	*m = DeleteAccountResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeStatus(num, typ, b, &m.StatusCode)
		case 2:
			var v uint64
			n, err := consumeVarint(num, typ, b, &v)
			m.RevokedSessions = uint32(v)
			return n, err
		}
		return 0, nil
	})
}
