package handler

import (
	"github.com/gin-gonic/gin"
)

// Routes groups the handlers wired into the HTTP router.
type Routes struct {
	Students *StudentHandler
	Exports  *ExportHandler
	Metrics  *MetricsHandler
}

// Register mounts every operation under the given API prefix. Queries are
// GET, mutations and id-bearing lookups POST a JSON body, matching the
// operation names the form client calls.
func (r Routes) Register(engine *gin.Engine, apiPrefix string) {
	engine.GET("/health", r.Metrics.Health)
	engine.GET("/ready", r.Metrics.Health)
	engine.GET("/metrics", r.Metrics.Prometheus)

	rpc := engine.Group(apiPrefix)
	rpc.GET("/healthcheck", r.Students.Healthcheck)
	rpc.POST("/createStudent", r.Students.Create)
	rpc.GET("/getStudents", r.Students.List)
	rpc.POST("/getStudentById", r.Students.GetByID)
	rpc.POST("/updateStudent", r.Students.Update)
	rpc.POST("/deleteStudent", r.Students.Delete)

	if r.Exports != nil {
		rpc.POST("/exportStudents", r.Exports.Export)
		rpc.GET("/downloadExport", r.Exports.Download)
	}
}
