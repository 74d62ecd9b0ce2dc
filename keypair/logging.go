package keypair

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LoggerHelper attaches the standard function and package fields to
// logrus entries emitted by this package.
type LoggerHelper struct {
	fields logrus.Fields
}

// NewLogger creates a logger helper for function.
func NewLogger(function string) *LoggerHelper {
	return &LoggerHelper{
		fields: logrus.Fields{
			"function": function,
			"package":  "keypair",
		},
	}
}

// WithFields adds several custom fields.
func (l *LoggerHelper) WithFields(fields logrus.Fields) *LoggerHelper {
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

// WithError records err together with its classification and the
// operation that produced it.
func (l *LoggerHelper) WithError(err error, errorType, operation string) *LoggerHelper {
	l.fields["error"] = err.Error()
	l.fields["error_type"] = errorType
	l.fields["operation"] = operation
	return l
}

// Entry logs function entry
func (l *LoggerHelper) Entry(message string) {
	logrus.WithFields(l.fields).Debug(fmt.Sprintf("Function entry: %s", message))
}

func (l *LoggerHelper) Debug(message string) { logrus.WithFields(l.fields).Debug(message) }
func (l *LoggerHelper) Warn(message string)  { logrus.WithFields(l.fields).Warn(message) }
func (l *LoggerHelper) Error(message string) { logrus.WithFields(l.fields).Error(message) }

// PublicKeyFields identifies a keypair in logs by its public key
// fingerprint. Private material never goes through this helper.
func PublicKeyFields(public [KeySize]byte) logrus.Fields {
	return logrus.Fields{
		"pubkey_fingerprint": Fingerprint(public),
	}
}
