package twilio

import "encoding/xml"

// TwiMLResponse is the XML body Twilio expects from a webhook handler. An
// empty Message element list produces "<Response></Response>", which tells
// Twilio not to reply.
type TwiMLResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message []string `xml:"Message,omitempty"`
}

// TwiML renders a webhook reply with zero or one message.
func TwiML(message string) ([]byte, error) {
	resp := TwiMLResponse{}
	if message != "" {
		resp.Message = []string{message}
	}
	body, err := xml.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
