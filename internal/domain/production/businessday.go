package production

import "time"

// businessDayOffset: los timestamps se guardan en UTC pero el negocio opera
// en UTC-6; un lote creado a las 03:00 UTC pertenece al día hábil anterior.
const businessDayOffset = -6 * time.Hour

// BusinessDay devuelve la fecha (medianoche UTC) del día hábil al que
// pertenece el instante t según la convención regional UTC-6. Se usa para
// la fecha de producción por defecto de los lotes.
func BusinessDay(t time.Time) time.Time {
	shifted := t.UTC().Add(businessDayOffset)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
}
