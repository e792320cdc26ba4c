package domain

// ReferenceAmenity - справочная аменита для начального заполнения
type ReferenceAmenity struct {
	Name        string
	Description string
	Icon        string
}

var ReferenceAmenities = []ReferenceAmenity{
	{Name: "Wi-Fi", Description: "High-speed internet access", Icon: "CiWifiOn"},
	{Name: "Parking", Description: "Dedicated parking space", Icon: "LuCircleParking"},
	{Name: "Swimming Pool", Description: "Private or shared pool", Icon: "PiSwimmingPoolLight"},
	{Name: "Gym", Description: "Fitness center", Icon: "MdFitnessCenter"},
	{Name: "AC", Description: "Air conditioning", Icon: "TbAirConditioning"},
	{Name: "Security", Description: "24/7 security", Icon: "MdOutlineSecurity"},
	{Name: "Laundry", Description: "Laundry facilities", Icon: "MdOutlineLocalLaundryService"},
	{Name: "Furnished", Description: "Fully furnished rooms", Icon: "LiaCouchSolid"},
	{Name: "Balcony", Description: "Private balcony", Icon: "MdBalcony"},
	{Name: "Pet Friendly", Description: "Pet-friendly accommodation", Icon: "MdPets"},
}

// ReferenceUniversities - университеты Дар-эс-Салама
var ReferenceUniversities = []UniversityInput{
	{
		Name:     "Water Institute",
		Address:  "University Rd, Dar es Salaam",
		Website:  "http://www.waterinstitute.ac.tz/",
		Location: Point{Lon: 39.2058728, Lat: -6.7882314},
	},
	{
		Name:     "National Institute of Transport",
		Address:  "P.O. Box 705 Mabibo Rd., Dar es Salaam",
		Website:  "http://www.nit.ac.tz/",
		Location: Point{Lon: 39.2180425, Lat: -6.8041316},
	},
	{
		Name:     "DarTU",
		Address:  "66RJ+2RC, CocaCola Rd, Dar es Salaam",
		Website:  "http://www.tudarco.ac.tz/",
		Location: Point{Lon: 39.2140017, Lat: -6.7599428},
	},
	{
		Name:     "Mwalimu Nyerere Memorial International University",
		Address:  "58C2+Q5P, Dar es Salaam",
		Website:  "http://www.mnma.ac.tz/",
		Location: Point{Lon: 39.2764591, Lat: -6.8154102},
	},
	{
		Name:     "University of Dar Es Salaam - Main Campus",
		Address:  "University of Dar es Salaam",
		Website:  "https://www.udsm.ac.tz/",
		Location: Point{Lon: 39.199991, Lat: -6.7777005},
	},
	{
		Name:     "Institute of Finance and Management",
		Address:  "5 Shaaban Robert St, Dar es Salaam",
		Website:  "https://ifm.ac.tz",
		Location: Point{Lon: 39.2909708, Lat: -6.8140108},
	},
	{
		Name:     "Ardhi University Tanzania",
		Address:  "Survey St, Dar es Salaam",
		Website:  "https://www.aru.ac.tz",
		Location: Point{Lon: 39.2112763, Lat: -6.7664742},
	},
	{
		Name:     "Dar es Salaam Institute of Technology",
		Address:  "Morogoro Rd, Dar es Salaam",
		Website:  "https://www.dit.ac.tz",
		Location: Point{Lon: 39.2710104, Lat: -6.8148071},
	},
}
