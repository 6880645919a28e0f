package car

// CarServiceAPI is the surface the controller and the importer consume.
type CarServiceAPI interface {
	ListCars(dealershipID *uint) ([]CarView, error)
	GetCar(ref string) (*CarView, error)
	AdminListCars(input AdminCarFilterInput) ([]Car, int64, int, error)
	CreateCar(actor, ip string, input CarInput) (*Car, error)
	UpdateCar(actor, ip string, id uint, input CarInput) (*Car, error)
	DeleteCar(actor, ip string, id uint) error
	BulkAction(actor, ip string, input BulkActionInput) (int, error)
	ExportCars(format Format) (contentType, filename string, out []byte, err error)
}

var _ CarServiceAPI = (*CarService)(nil)
