package internal

import "padmon/models"

type Database interface {
	WriteLogMessage(data Data) error
	ReadLog() (interface{}, error)
	SaveRun(run *models.AnalysisRun) error
	GetRun(id string) (*models.AnalysisRun, error)
	GetRuns(district string, limit int64) ([]models.AnalysisRun, error)
	AddSubscription(subscription *models.UserSubscription) error
	DeleteSubscription(subscription *models.UserSubscription) error
	GetSubscriptions() ([]models.UserSubscription, error)
}

type Data interface {
	DataType() string
}
