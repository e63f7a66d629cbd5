package kvstore

import "strings"

var idEscaper = strings.NewReplacer("%", "%25", ":", "%3A")

// namespace turns a device id into a key prefix. The escape character and the
// separator are both escaped so one device can never address another's keys.
func namespace(deviceID string) string {
	return idEscaper.Replace(deviceID) + ":"
}
