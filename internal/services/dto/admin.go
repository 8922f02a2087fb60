package dto

// PlatformStatsResponse - сводка по порталу для админской панели
type PlatformStatsResponse struct {
	TotalStudents     int64 `json:"totalStudents"`
	TotalCompanies    int64 `json:"totalCompanies"`
	TotalJobs         int64 `json:"totalJobs"`
	TotalApplications int64 `json:"totalApplications"`
	RecentJobs        int64 `json:"recentJobs"`
	RecentStudents    int64 `json:"recentStudents"`
	Placements        int64 `json:"placements"`
}

// CompanyStatsResponse - сводка по вакансиям одной компании
type CompanyStatsResponse struct {
	TotalJobs       int64 `json:"totalJobs"`
	TotalApplicants int64 `json:"totalApplicants"`
	NewApplications int64 `json:"newApplications"`
}
