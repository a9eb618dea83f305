package seed

// Row schemas of the generated datasets. Optional columns are pointers so
// the generator can leave cells empty the way the published datasets do.

type AccidentRow struct {
	AccidentYear         int64   `parquet:"name=ACCIDENT_YEAR,type=INT64"`
	AccidentTime         *string `parquet:"name=ACCIDENT_TIME,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	PerpetratorBirthYear *int64  `parquet:"name=PERPETRATOR_BIRTH_YEAR,type=INT64,repetitiontype=OPTIONAL"`
	Nationality          *string `parquet:"name=NATIONALITY_GROUP_OF_ACCIDENT_,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
}

type LicenseRow struct {
	BirthYear   *int64  `parquet:"name=BIRTH_YEAR,type=INT64,repetitiontype=OPTIONAL"`
	Nationality *string `parquet:"name=NATIONALITY_GROUP,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	LicenseType *string `parquet:"name=LICENSE_TYPE,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	Total       int64   `parquet:"name=TOTAL,type=INT64"`
}

type VehicleRow struct {
	BirthYear *int64  `parquet:"name=BIRTH_YEAR,type=INT64,repetitiontype=OPTIONAL"`
	Status    *string `parquet:"name=STATUS,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	Total     int64   `parquet:"name=TOTAL,type=INT64"`
}
