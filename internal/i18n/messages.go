package i18n

import "github.com/petshop-next/internal/constants"

// catalogs 各语言文案目录
var catalogs = map[string]map[string]string{
	constants.LocaleEsCO: {
		"error.bad_request":                   "Solicitud inválida",
		"error.missing_field":                 "Faltan campos obligatorios",
		"error.invalid_email":                 "Correo electrónico inválido",
		"error.email_exists":                  "El correo electrónico ya está registrado",
		"error.weak_password":                 "La contraseña no cumple la política de seguridad",
		"error.password_policy":               "La contraseña debe tener al menos %d caracteres, una mayúscula, un número y un carácter especial",
		"error.verify_code_invalid":           "Código de verificación incorrecto",
		"error.verify_code_expired":           "El código de verificación ha expirado",
		"error.verify_code_attempts_exceeded": "Demasiados intentos fallidos, solicita un nuevo código",
		"error.already_verified":              "La cuenta ya está verificada",
		"error.rate_limited":                  "Demasiadas solicitudes, intenta más tarde",
		"error.login_too_many":                "Demasiados intentos de inicio de sesión, espera %d segundos",
		"error.rate_limit_unavailable":        "Servicio de limitación no disponible",
		"error.user_disabled":                 "La cuenta está deshabilitada",
		"error.invalid_credentials":           "Correo o contraseña incorrectos",
		"error.account_locked":                "Cuenta bloqueada temporalmente por intentos fallidos",
		"error.account_not_verified":          "Debes verificar tu correo antes de iniciar sesión",
		"error.unauthorized":                  "No autorizado",
		"error.token_invalid":                 "Token inválido o expirado",
		"error.token_revoked":                 "La sesión ha sido revocada",
		"error.auth_header_missing":           "Falta el encabezado de autorización",
		"error.auth_header_invalid":           "Encabezado de autorización inválido",
		"error.jwt_secret_missing":            "Configuración de autenticación incompleta",
		"error.forbidden":                     "Permisos insuficientes",
		"error.not_found":                     "Recurso no encontrado",
		"error.internal":                      "Error interno del servidor",
		"error.captcha_required":              "Se requiere captcha",
		"error.captcha_invalid":               "Captcha incorrecto",
		"error.register_failed":               "No se pudo completar el registro",
		"error.verify_failed":                 "No se pudo verificar la cuenta",
		"error.resend_failed":                 "No se pudo reenviar el código",
		"error.login_failed":                  "No se pudo iniciar sesión",
		"error.refresh_failed":                "No se pudo renovar la sesión",
		"error.profile_update_failed":         "No se pudo actualizar el perfil",
		"error.user_not_found":                "Usuario no encontrado",
		"error.category_exists":               "Ya existe una categoría con ese nombre",
		"error.category_in_use":               "La categoría tiene productos asociados",
		"error.category_not_found":            "Categoría no encontrada",
		"error.subcategory_not_found":         "Subcategoría no encontrada",
		"error.subcategory_mismatch":          "La subcategoría no pertenece a la categoría",
		"error.product_not_found":             "Producto no encontrado",
		"error.product_invalid":               "Datos del producto inválidos",
		"error.insufficient_stock":            "Stock insuficiente",
		"error.cart_empty":                    "El carrito está vacío",
		"error.cart_item_not_found":           "Artículo no encontrado en el carrito",
		"error.order_not_found":               "Pedido no encontrado",
		"error.order_status_invalid":          "Estado de pedido inválido",
		"error.order_transition_invalid":      "Transición de estado no permitida",
		"error.shipping_address_invalid":      "La dirección de envío debe tener al menos 10 caracteres",
		"error.phone_invalid":                 "El teléfono debe tener entre 7 y 15 dígitos",
		"error.restock_quantity_invalid":      "La cantidad debe ser mayor que cero",
		"error.restock_rate_limited":          "Demasiados reabastecimientos para este producto, intenta más tarde",
		"error.carousel_full":                 "Se alcanzó el máximo de imágenes del carrusel",
		"error.carousel_order_taken":          "El orden indicado ya está en uso",
		"error.carousel_not_found":            "Imagen de carrusel no encontrada",
		"error.admin_exists":                  "El administrador ya existe",
		"error.invalid_password":              "La contraseña actual es incorrecta",
		"error.session_required":              "Se requiere sesión o el encabezado X-Session-ID",
		"error.profile_empty":                 "No hay campos de perfil para actualizar",
		"error.quantity_invalid":              "La cantidad debe ser mayor que cero",
		"error.captcha_generate_failed":       "No se pudo generar el captcha",
		"error.user_id_invalid":               "Identificador de usuario inválido",
		"error.user_id_type_invalid":          "Identificador de usuario con tipo inválido",
		"error.admin_id_invalid":              "Identificador de administrador inválido",
		"error.admin_id_type_invalid":         "Identificador de administrador con tipo inválido",
		"error.config_fetch_failed":           "No se pudo obtener la configuración",
		"error.save_failed":                   "No se pudo guardar el registro",
		"error.admin_create_failed":           "No se pudo crear el administrador",
		"error.admin_update_failed":           "No se pudo actualizar el administrador",
		"error.admin_delete_failed":           "No se pudo eliminar el administrador",
		"error.admin_delete_last_forbidden":   "No se puede eliminar el último administrador",
		"error.admin_delete_protected":        "No se puede eliminar un administrador protegido",
		"error.admin_delete_self_forbidden":   "No puedes eliminar tu propia cuenta",
		"error.admin_username_exists":         "El nombre de usuario ya existe",
		"error.admin_username_invalid":        "Nombre de usuario inválido",
		"error.list_failed":                   "No se pudo obtener el listado",
		"error.create_failed":                 "No se pudo crear el registro",
		"error.update_failed":                 "No se pudo actualizar el registro",
		"error.delete_failed":                 "No se pudo eliminar el registro",

		"msg.register_ok": "Usuario registrado. Revisa tu correo para activar la cuenta",
		"msg.verify_ok":   "Cuenta verificada correctamente",
		"msg.resend_ok":   "Código reenviado, revisa tu correo",
		"msg.logout_ok":   "Sesión cerrada",

		"order.status.pending":   "Pendiente",
		"order.status.shipped":   "Enviado",
		"order.status.delivered": "Entregado",
		"order.status.canceled":  "Cancelado",

		"email.verify_code.subject":       "Código de verificación",
		"email.verify_code.body":          "Tu código de verificación es: %s\n\nEste código expira en %d minutos. No lo compartas con nadie.",
		"email.order_status.subject":      "Tu pedido está %s",
		"email.order_status.body":         "Pedido %s\nEstado: %s\nTotal: %s\n\nGracias por tu compra.",
		"email.inventory_alert.subject":   "Alerta de inventario bajo",
		"email.inventory_alert.body":      "El producto #%d tiene %d unidades en stock (umbral: %d).",
	},
	constants.LocaleEnUS: {
		"error.bad_request":                   "Invalid request",
		"error.missing_field":                 "Missing required fields",
		"error.invalid_email":                 "Invalid email address",
		"error.email_exists":                  "Email is already registered",
		"error.weak_password":                 "Password does not meet the security policy",
		"error.password_policy":               "Password must be at least %d characters with an uppercase letter, a digit and a special character",
		"error.verify_code_invalid":           "Incorrect verification code",
		"error.verify_code_expired":           "Verification code has expired",
		"error.verify_code_attempts_exceeded": "Too many failed attempts, request a new code",
		"error.already_verified":              "Account is already verified",
		"error.rate_limited":                  "Too many requests, try again later",
		"error.login_too_many":                "Too many login attempts, wait %d seconds",
		"error.rate_limit_unavailable":        "Rate limiting service unavailable",
		"error.user_disabled":                 "Account is disabled",
		"error.invalid_credentials":           "Incorrect email or password",
		"error.account_locked":                "Account temporarily locked after failed attempts",
		"error.account_not_verified":          "Verify your email before signing in",
		"error.unauthorized":                  "Unauthorized",
		"error.token_invalid":                 "Invalid or expired token",
		"error.token_revoked":                 "Session has been revoked",
		"error.auth_header_missing":           "Missing authorization header",
		"error.auth_header_invalid":           "Invalid authorization header",
		"error.jwt_secret_missing":            "Authentication configuration incomplete",
		"error.forbidden":                     "Insufficient permissions",
		"error.not_found":                     "Resource not found",
		"error.internal":                      "Internal server error",
		"error.captcha_required":              "Captcha required",
		"error.captcha_invalid":               "Incorrect captcha",
		"error.register_failed":               "Registration failed",
		"error.verify_failed":                 "Account verification failed",
		"error.resend_failed":                 "Could not resend the code",
		"error.login_failed":                  "Sign-in failed",
		"error.refresh_failed":                "Could not refresh the session",
		"error.profile_update_failed":         "Could not update profile",
		"error.user_not_found":                "User not found",
		"error.category_exists":               "A category with that name already exists",
		"error.category_in_use":               "Category still has products",
		"error.category_not_found":            "Category not found",
		"error.subcategory_not_found":         "Subcategory not found",
		"error.subcategory_mismatch":          "Subcategory does not belong to the category",
		"error.product_not_found":             "Product not found",
		"error.product_invalid":               "Invalid product data",
		"error.insufficient_stock":            "Insufficient stock",
		"error.cart_empty":                    "Cart is empty",
		"error.cart_item_not_found":           "Item not found in cart",
		"error.order_not_found":               "Order not found",
		"error.order_status_invalid":          "Invalid order status",
		"error.order_transition_invalid":      "Status transition not allowed",
		"error.shipping_address_invalid":      "Shipping address must be at least 10 characters",
		"error.phone_invalid":                 "Phone must have 7 to 15 digits",
		"error.restock_quantity_invalid":      "Quantity must be greater than zero",
		"error.restock_rate_limited":          "Too many restocks for this product, try again later",
		"error.carousel_full":                 "Carousel image limit reached",
		"error.carousel_order_taken":          "Display order already in use",
		"error.carousel_not_found":            "Carousel image not found",
		"error.admin_exists":                  "Admin already exists",
		"error.invalid_password":              "Current password is incorrect",
		"error.session_required":              "A session or the X-Session-ID header is required",
		"error.profile_empty":                 "No profile fields to update",
		"error.quantity_invalid":              "Quantity must be greater than zero",
		"error.captcha_generate_failed":       "Could not generate captcha",
		"error.user_id_invalid":               "Invalid user identifier",
		"error.user_id_type_invalid":          "User identifier has an invalid type",
		"error.admin_id_invalid":              "Invalid admin identifier",
		"error.admin_id_type_invalid":         "Admin identifier has an invalid type",
		"error.config_fetch_failed":           "Could not fetch the configuration",
		"error.save_failed":                   "Could not save the record",
		"error.admin_create_failed":           "Could not create the admin",
		"error.admin_update_failed":           "Could not update the admin",
		"error.admin_delete_failed":           "Could not delete the admin",
		"error.admin_delete_last_forbidden":   "Cannot delete the last admin",
		"error.admin_delete_protected":        "Cannot delete a protected admin",
		"error.admin_delete_self_forbidden":   "You cannot delete your own account",
		"error.admin_username_exists":         "Username already exists",
		"error.admin_username_invalid":        "Invalid username",
		"error.list_failed":                   "Could not fetch the listing",
		"error.create_failed":                 "Could not create the record",
		"error.update_failed":                 "Could not update the record",
		"error.delete_failed":                 "Could not delete the record",

		"msg.register_ok": "User registered. Check your email to activate the account",
		"msg.verify_ok":   "Account verified",
		"msg.resend_ok":   "Code resent, check your email",
		"msg.logout_ok":   "Signed out",

		"order.status.pending":   "Pending",
		"order.status.shipped":   "Shipped",
		"order.status.delivered": "Delivered",
		"order.status.canceled":  "Canceled",

		"email.verify_code.subject":       "Verification code",
		"email.verify_code.body":          "Your verification code is: %s\n\nThis code expires in %d minutes. Do not share it with anyone.",
		"email.order_status.subject":      "Your order is %s",
		"email.order_status.body":         "Order %s\nStatus: %s\nTotal: %s\n\nThank you for your purchase.",
		"email.inventory_alert.subject":   "Low stock alert",
		"email.inventory_alert.body":      "Product #%d has %d units in stock (threshold: %d).",
	},
}
