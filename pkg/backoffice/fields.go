package backoffice

import "salesdesk/pkg/record"

// Credentials sheet.
var (
	fieldEmail     = record.Field{Name: "email", Exact: []string{"Email", "Correo"}}
	fieldUsername  = record.Field{Name: "username", Exact: []string{"Username", "Usuario"}}
	fieldFullName  = record.Field{Name: "nombre", Exact: []string{"Nombres y Apellidos", "Nombre"}}
	fieldCode      = record.Field{Name: "codigo", Exact: []string{"Codigo", "Código", "code"}}
	fieldComision  = record.Field{Name: "comision", Exact: []string{"Comisión", "commission", "pct"}}
	fieldPassword  = record.Field{Name: "password", Exact: []string{"Contraseña", "Password", "Clave"}}
	fieldEstado    = record.Field{Name: "estado", Exact: []string{"Estado", "Status"}}
	fieldRol       = record.Field{Name: "rol", Exact: []string{"Rol", "Role"}}
	fieldPosicion  = record.Field{Name: "posicion", Exact: []string{"Posicion", "Posición"}, Contains: []string{"posicion"}}
	fieldVolumen   = record.Field{Name: "volumen", Exact: []string{"Volumen"}, Contains: []string{"volumen"}}
	fieldVentasCnt = record.Field{Name: "ventas", Exact: []string{"Ventas"}}
)

// Sales sheet.
var (
	fieldPersonal     = record.Field{Name: "personal", Exact: []string{"PERSONAL"}, Contains: []string{"personal", "asesor", "vendedor"}}
	fieldSaleDate     = record.Field{Name: "fecha", Exact: []string{"FECHA DE LA VENTA", "Marca temporal"}, Contains: []string{"fecha"}}
	fieldTimestamp    = record.Field{Name: "marca_temporal", Exact: []string{"Marca temporal"}, Contains: []string{"marcatemporal", "timestamp"}}
	fieldAmount       = record.Field{Name: "monto", Exact: []string{"MONTO DEPOSITADO"}, Contains: []string{"monto", "importe"}}
	fieldTotalAmount  = record.Field{Name: "monto_total", Exact: []string{"MONTO TOTAL DE LA VENTA", "MONTO TOTAL"}, Contains: []string{"montototal", "total"}}
	fieldDeposited    = record.Field{Name: "monto_depositado", Exact: []string{"MONTO DEPOSITADO"}, Contains: []string{"depositado", "deposito"}}
	fieldClient       = record.Field{Name: "cliente", Exact: []string{"NOMBRE COMPLETO DEL CLIENTE", "CLIENTE"}, Contains: []string{"cliente"}}
	fieldDNI          = record.Field{Name: "dni", Exact: []string{"DNI DEL CLIENTE", "DNI"}, Contains: []string{"dni"}}
	fieldPhone        = record.Field{Name: "celular", Exact: []string{"CELULAR DEL CLIENTE", "CELULAR"}, Contains: []string{"celular"}}
	fieldClientEmail  = record.Field{Name: "correo", Exact: []string{"CORREO DEL CLIENTE", "CORREO"}, Contains: []string{"correo"}}
	fieldProduct      = record.Field{Name: "producto", Exact: []string{"TIPO DE PRODUCTO", "PRODUCTO"}, Contains: []string{"producto"}}
	fieldOperation    = record.Field{Name: "operacion", Exact: []string{"NUMERO DE OPERACIÓN"}, Contains: []string{"operacion"}}
	fieldReceipt      = record.Field{Name: "comprobante", Exact: []string{"COMPROBANTE DE PAGO"}, Contains: []string{"comprobante"}}
	fieldBank         = record.Field{Name: "entidad", Exact: []string{"ENTIDAD FINANCIERA"}, Contains: []string{"entidad"}}
	fieldInstallments = record.Field{Name: "cuotas", Exact: []string{"CUOTAS"}, Contains: []string{"cuota"}}
	fieldSpecialty    = record.Field{Name: "especialidad", Exact: []string{"ESPECIALIDAD"}, Contains: []string{"especialidad"}}
	fieldObservations = record.Field{Name: "observaciones", Exact: []string{"OBSERVACIONES"}, Contains: []string{"observacion"}}
)

// Mentions sheet.
var (
	fieldMentionName      = record.Field{Name: "nombre", Exact: []string{"NOMBRES Y APELLIDOS", "NOMBRE COMPLETO", "NOMBRE"}, Contains: []string{"nombre"}}
	fieldMentionDNI       = record.Field{Name: "dni", Exact: []string{"DNI"}, Contains: []string{"dni"}}
	fieldMentionCode      = record.Field{Name: "codigo", Exact: []string{"CÓDIGO", "CODIGO DE CERTIFICADO"}, Contains: []string{"codigo"}}
	fieldMention          = record.Field{Name: "mencion", Exact: []string{"MENCIÓN", "CURSO", "PROGRAMA"}, Contains: []string{"curso", "programa", "mencion"}}
	fieldMentionType      = record.Field{Name: "tipo", Exact: []string{"TIPO DE MENCIÓN", "TIPO"}, Contains: []string{"tipo"}}
	fieldMentionSpecialty = record.Field{Name: "especialidad", Exact: []string{"ESPECIALIDAD"}, Contains: []string{"especialidad"}}
	fieldCertProcess      = record.Field{Name: "p_certificado", Exact: []string{"P. CERTIFICADO", "P CERTIFICADO", "PROCESO DE CERTIFICADO"}, Contains: []string{"p.certificado", "pcertificado", "proceso"}}
	fieldHours            = record.Field{Name: "horas", Exact: []string{"HORAS", "HORAS ACADÉMICAS", "HORAS LECTIVAS"}, Contains: []string{"horas"}}
	fieldStartDate        = record.Field{Name: "fecha_inicio", Exact: []string{"FECHA DE INICIO", "FECHA INICIO"}, Contains: []string{"inicio"}}
	fieldEmissionDate     = record.Field{Name: "fecha_emision", Exact: []string{"FECHA DE EMISIÓN", "FECHA EMISIÓN"}, Contains: []string{"emision"}}
	fieldEndDate          = record.Field{Name: "fecha_fin", Exact: []string{"FECHA DE FIN", "FECHA FIN", "FECHA DE TÉRMINO"}, Contains: []string{"termino", "fechafin"}}
)
