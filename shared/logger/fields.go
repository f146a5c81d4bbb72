package logger

import (
	"time"

	"go.uber.org/zap"
)

// HTTP

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Domain

func UserID(v string) zap.Field    { return zap.String("user_id", v) }
func Email(v string) zap.Field     { return zap.String("email", v) }
func EventType(v string) zap.Field { return zap.String("event_type", v) }

// Op names the operation being performed, e.g. "insert_user".
func Op(v string) zap.Field        { return zap.String("op", v) }
func Component(v string) zap.Field { return zap.String("component", v) }
func Key(v string) zap.Field       { return zap.String("key", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

func String(key, v string) zap.Field { return zap.String(key, v) }
