package service

import (
	"github.com/sirupsen/logrus"
)

// Service 各サービスに共通するセッション情報。
type Service struct {
	Log *logrus.Entry
}
