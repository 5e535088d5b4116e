package service

import "go.uber.org/zap"

func logFields(userID, date string, err error) []zap.Field {
	fields := []zap.Field{zap.String("user", userID)}
	if date != "" {
		fields = append(fields, zap.String("date", date))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}
