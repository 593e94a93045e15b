package dto

import "time"

type JobReportDTO struct {
	Job       string `json:"job"`
	Processed int    `json:"processed"`
	Updated   int    `json:"updated"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

type RunBatchResponse struct {
	TraceID   string         `json:"traceId"`
	Job       string         `json:"job"`
	Results   []JobReportDTO `json:"results"`
	Timestamp time.Time      `json:"timestamp"`
}
