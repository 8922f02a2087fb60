// @title           Campus Job Portal API
// @version         1.0
// @description     API кампусного портала трудоустройства: вакансии, отклики и уведомления.
// @contact.name    Placement Cell
// @contact.email   placement@campus.local
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api

package main

import "jobportal_backend/internal/app"

func main() {
	app.Run()
}
