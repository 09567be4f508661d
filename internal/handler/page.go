package handler

import (
	"net/http"
	"strconv"

	"reiadvisor/internal/formschema"
	"reiadvisor/internal/model"
	"reiadvisor/internal/service"

	"github.com/gin-gonic/gin"
)

// PageTemplate is the name of the single page template
const PageTemplate = "index.html"

// Widget kinds rendered by the page template
const (
	widgetSelect    = "select"
	widgetText      = "text"
	widgetNumber    = "number"
	widgetAmenities = "amenities"
)

// PageHandler renders the valuation form and its result as HTML
type PageHandler struct {
	predictionService *service.PredictionService
	build             BuildInfo
}

// NewPageHandler creates a new page handler
func NewPageHandler(predictionService *service.PredictionService, build BuildInfo) *PageHandler {
	return &PageHandler{
		predictionService: predictionService,
		build:             build,
	}
}

type fieldView struct {
	Name      string
	Label     string
	Kind      string
	Options   []string
	Value     string
	Min       int
	Max       int
	MaxLength int
	Checked   map[string]bool
}

type sectionView struct {
	Title  string
	Fields []fieldView
}

type pageData struct {
	Title       string
	Sections    []sectionView
	Result      *model.PredictionResult
	Error       *model.ErrorResponse
	Unavailable string
	Build       BuildInfo
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	data := h.page(&model.PropertyForm{})
	if err := h.predictionService.Status(c.Request.Context()); err != nil {
		data.Unavailable = err.Error()
	}
	c.HTML(http.StatusOK, PageTemplate, data)
}

// Submit handles POST /predict
func (h *PageHandler) Submit(c *gin.Context) {
	var form model.PropertyForm
	if err := c.ShouldBind(&form); err != nil {
		data := h.page(&model.PropertyForm{})
		data.Error = &model.ErrorResponse{Kind: KindBadRequest, Error: "Invalid form submission: " + err.Error()}
		c.HTML(http.StatusBadRequest, PageTemplate, data)
		return
	}

	data := h.page(&form)

	result, err := h.predictionService.Predict(c.Request.Context(), &form)
	if err != nil {
		status, resp := describeError(err)
		data.Error = &resp
		if status == http.StatusServiceUnavailable {
			data.Unavailable = err.Error()
		}
		c.HTML(status, PageTemplate, data)
		return
	}

	data.Result = result
	c.HTML(http.StatusOK, PageTemplate, data)
}

// page lays the schema out as sections, pre-filled with the submitted values
// or the schema defaults
func (h *PageHandler) page(form *model.PropertyForm) pageData {
	schema := h.predictionService.Builder().Schema()
	refYear := h.predictionService.ReferenceYear()
	values := formValues(form)

	checked := make(map[string]bool, len(form.Amenities))
	if resolved, err := h.predictionService.Builder().ResolveAmenities(form.Amenities); err == nil {
		for _, a := range resolved {
			checked[a] = true
		}
	}

	data := pageData{Title: schema.Title, Build: h.build}
	for _, sec := range schema.Sections {
		sv := sectionView{Title: sec.Title}
		for _, name := range sec.Fields {
			sv.Fields = append(sv.Fields, fieldFor(schema, name, values, checked, refYear))
		}
		data.Sections = append(data.Sections, sv)
	}
	return data
}

func fieldFor(schema *formschema.Schema, name string, values map[string]string, checked map[string]bool, refYear int) fieldView {
	value, submitted := values[name]

	if f, ok := schema.Selects[name]; ok {
		if !submitted {
			value = f.Default
		}
		return fieldView{Name: name, Label: f.Label, Kind: widgetSelect, Options: f.Options, Value: value}
	}
	if f, ok := schema.Texts[name]; ok {
		if !submitted {
			value = f.Default
		}
		return fieldView{Name: name, Label: f.Label, Kind: widgetText, Value: value, MaxLength: f.MaxLength}
	}
	if f, ok := schema.Numbers[name]; ok {
		if !submitted {
			value = strconv.Itoa(f.Default)
		}
		lo, hi := f.Bounds(refYear)
		return fieldView{Name: name, Label: f.Label, Kind: widgetNumber, Value: value, Min: lo, Max: hi}
	}
	return fieldView{
		Name:    name,
		Label:   schema.Amenities.Label,
		Kind:    widgetAmenities,
		Options: schema.Amenities.Options,
		Checked: checked,
	}
}

// formValues flattens the submitted values by field name
func formValues(form *model.PropertyForm) map[string]string {
	values := make(map[string]string)
	str := func(name string, v *string) {
		if v != nil {
			values[name] = *v
		}
	}
	num := func(name string, v *int) {
		if v != nil {
			values[name] = strconv.Itoa(*v)
		}
	}

	str(formschema.FieldState, form.State)
	str(formschema.FieldCity, form.City)
	str(formschema.FieldLocality, form.Locality)
	str(formschema.FieldPropertyType, form.PropertyType)
	str(formschema.FieldFurnishedStatus, form.FurnishedStatus)
	str(formschema.FieldPublicTransport, form.PublicTransportAccessibility)
	str(formschema.FieldParking, form.ParkingSpace)
	str(formschema.FieldSecurity, form.Security)
	str(formschema.FieldFacing, form.Facing)
	str(formschema.FieldOwnerType, form.OwnerType)
	str(formschema.FieldAvailability, form.AvailabilityStatus)
	num(formschema.FieldBHK, form.BHK)
	num(formschema.FieldSizeSqFt, form.SizeInSqFt)
	num(formschema.FieldYearBuilt, form.YearBuilt)
	num(formschema.FieldFloorNo, form.FloorNo)
	num(formschema.FieldTotalFloors, form.TotalFloors)
	num(formschema.FieldNearbySchools, form.NearbySchools)
	num(formschema.FieldNearbyHospitals, form.NearbyHospitals)

	return values
}
