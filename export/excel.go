package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names match the report the office already circulates.
const (
	sheetParking  = "Parkir"
	sheetLandUse  = "Alih Fungsi Lahan"
	sheetBuilding = "Perubahan Bangunan"
)

// Excel renders the run as a workbook with one sheet per analysis domain.
func (r *Report) Excel() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeParkingSheet(f); err != nil {
		return nil, err
	}
	if err := r.writeLandUseSheet(f); err != nil {
		return nil, err
	}
	if err := r.writeBuildingSheet(f); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Report) writeParkingSheet(f *excelize.File) error {
	if _, err := f.NewSheet(sheetParking); err != nil {
		return err
	}
	header := []interface{}{"ID", "Lat", "Lon", "Luas (m2)", "Jenis", "Kapasitas Motor", "Kapasitas Mobil", "Potensi Harian", "Potensi Bulanan", "Potensi Tahunan"}
	if err := f.SetSheetRow(sheetParking, "A1", &header); err != nil {
		return err
	}
	for i, p := range r.Parking {
		row := []interface{}{p.Id, p.Lat, p.Lon, p.AreaM2, p.SiteType, p.Capacity.Motor, p.Capacity.Mobil, p.RevenueDaily, p.RevenueMonthly, p.RevenueAnnual}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetParking, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) writeLandUseSheet(f *excelize.File) error {
	if _, err := f.NewSheet(sheetLandUse); err != nil {
		return err
	}
	header := []interface{}{"ID", "Lat", "Lon", "Luas (m2)", "Dari", "Menjadi", "Prioritas", "Terverifikasi", "Potensi PBB"}
	if err := f.SetSheetRow(sheetLandUse, "A1", &header); err != nil {
		return err
	}
	for i, c := range r.LandChanges {
		row := []interface{}{c.Id, c.Lat, c.Lon, c.AreaM2, c.FromClass, c.ToClass, c.Priority, c.Verified, c.EstimatedPBB}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetLandUse, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) writeBuildingSheet(f *excelize.File) error {
	if _, err := f.NewSheet(sheetBuilding); err != nil {
		return err
	}
	header := []interface{}{"ID", "Lat", "Lon", "Luas Lama", "Luas Baru", "Penambahan Area", "Penambahan Tinggi", "Kenaikan PBB", "Perlu Verifikasi Lapangan"}
	if err := f.SetSheetRow(sheetBuilding, "A1", &header); err != nil {
		return err
	}
	for i, b := range r.Buildings {
		row := []interface{}{b.Id, b.Lat, b.Lon, b.OldAreaM2, b.NewAreaM2, b.AreaIncrease, b.HeightIncrease, b.TaxIncrease, b.NeedsFieldVisit}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetBuilding, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
