// Package content holds the static marketing copy the site renders:
// clinic services, team members and testimonials.
package content

type ClinicService struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Testimonial struct {
	Name string `json:"name"`
	Pet  string `json:"pet"`
	Text string `json:"text"`
}

// Services lists what the clinic offers, in display order.
func Services() []ClinicService {
	return []ClinicService{
		{Title: "Consultas Generales", Description: "Exámenes completos y diagnósticos precisos para mantener la salud de tu mascota."},
		{Title: "Vacunación", Description: "Planes de vacunación completos para proteger a tu mascota de enfermedades."},
		{Title: "Cirugía", Description: "Procedimientos quirúrgicos con equipamiento moderno y anestesia segura."},
		{Title: "Cardiología", Description: "Diagnóstico y tratamiento de enfermedades cardíacas en mascotas."},
		{Title: "Emergencias 24/7", Description: "Atención de urgencias disponible las 24 horas del día, todos los días."},
		{Title: "Farmacia", Description: "Medicamentos y productos veterinarios de calidad para tu mascota."},
	}
}

func Team() []TeamMember {
	return []TeamMember{
		{Name: "Dra. María González", Role: "Veterinaria Principal"},
		{Name: "Dr. Carlos Rodríguez", Role: "Cirujano Veterinario"},
		{Name: "Dra. Ana Martínez", Role: "Especialista en Cardiología"},
	}
}

func Testimonials() []Testimonial {
	return []Testimonial{
		{Name: "Laura Fernández", Pet: "Max (Golden Retriever)", Text: "Excelente atención y profesionalismo. La Dra. González salvó la vida de Max cuando tuvo una emergencia. Eternamente agradecida."},
		{Name: "Roberto Silva", Pet: "Luna (Gato Persa)", Text: "El mejor lugar para llevar a tu mascota. Siempre atentos, cariñosos y muy profesionales. Luna está feliz y saludable gracias a ellos."},
		{Name: "Patricia Gómez", Pet: "Toby (Beagle)", Text: "Llevamos a Toby desde cachorro. El equipo es maravilloso, siempre disponibles y con precios justos. Los recomiendo 100%."},
	}
}
