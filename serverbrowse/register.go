package serverbrowse

import "encoding/json"

// RegisterRequest is the JSON body a server sends a master server to
// (re-)register itself, grounded on the fields RegisterData/send_register
// thread through in original_source/register/src/lib.rs. The HTTP
// exchange itself is out of scope; this is the request's data shape.
type RegisterRequest struct {
	Port            uint16          `json:"port"`
	InfoSerial      uint64          `json:"info_serial"`
	Info            json.RawMessage `json:"info,omitempty"`
	ChallengeSecret string          `json:"challenge_secret,omitempty"`
	ChallengeToken  string          `json:"challenge_token,omitempty"`
	Secret          string          `json:"secret"`
	CommunityToken  string          `json:"community_token,omitempty"`
}

// RegisterStatus is the "status" tag of a RegisterResult.
type RegisterStatus string

const (
	RegisterSuccess       RegisterStatus = "success"
	RegisterNeedChallenge RegisterStatus = "need_challenge"
	RegisterNeedInfo      RegisterStatus = "need_info"
	RegisterError         RegisterStatus = "error"
)

// RegisterErrorDetail carries the message of an "error" RegisterResult.
type RegisterErrorDetail struct {
	Message string `json:"message"`
}

// RegisterResult is the master server's JSON response to a
// RegisterRequest, tagged by Status.
type RegisterResult struct {
	Status RegisterStatus       `json:"status"`
	Error  *RegisterErrorDetail `json:"-"`
}

// UnmarshalJSON decodes the externally-tagged {"status": "error", ...}
// shape: every field of RegisterErrorDetail is promoted into the same
// object alongside "status" rather than nested.
func (r *RegisterResult) UnmarshalJSON(data []byte) error {
	var tagged struct {
		Status  RegisterStatus `json:"status"`
		Message string         `json:"message"`
	}

	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}

	r.Status = tagged.Status
	r.Error = nil

	if tagged.Status == RegisterError {
		r.Error = &RegisterErrorDetail{Message: tagged.Message}
	}

	return nil
}

// MarshalJSON encodes back to the externally-tagged shape.
func (r RegisterResult) MarshalJSON() ([]byte, error) {
	tagged := struct {
		Status  RegisterStatus `json:"status"`
		Message string         `json:"message,omitempty"`
	}{Status: r.Status}

	if r.Error != nil {
		tagged.Message = r.Error.Message
	}

	return json.Marshal(tagged)
}
